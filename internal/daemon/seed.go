package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	postctl "github.com/eq-toolbox/eq-toolbox/internal/db/controller/post"
	"github.com/eq-toolbox/eq-toolbox/internal/db/models"
)

// samplePosts are written into an empty database.
var samplePosts = []models.Post{ //nolint:gochecknoglobals
	{
		Slug:   "hola-mundo",
		Title:  "Hola mundo",
		Type:   models.PostTypePost,
		Format: models.FormatMarkdown,
		Content: "Bienvenido a **EQ Toolbox**.\n\n" +
			"El bloque de llamada a la acción se añade al final de cada entrada. " +
			"Configúralo en /admin/options-reading.",
	},
	{
		Slug:    "cta-en-linea",
		Title:   "CTA en línea",
		Type:    models.PostTypePost,
		Format:  models.FormatHTML,
		Content: "<p>Esta entrada coloca el bloque a mano:</p>\n[eq_cta]\n<p>y no se repite al final.</p>",
	},
	{
		Slug:    "acerca-de",
		Title:   "Acerca de",
		Type:    models.PostTypePage,
		Format:  models.FormatHTML,
		Content: "<p>Las páginas no muestran el bloque.</p>",
	},
}

// seed writes sample content if there are no posts yet.
func seed(db *gorm.DB) error {
	count, err := postctl.Count(db)
	if err != nil {
		return errors.Wrap(err, "count posts")
	}

	if count > 0 {
		return nil
	}

	for i := range samplePosts {
		p := samplePosts[i]
		if err = postctl.Create(db, &p); err != nil {
			return errors.Wrapf(err, "seed post %s", p.Slug)
		}
	}

	log.Info().Int("posts", len(samplePosts)).Msg("sample content created")

	return nil
}
