package endpoints

import (
	"net/http"

	"github.com/veridian-labs/warden/pkg/catalog"
	"github.com/veridian-labs/warden/pkg/server"
)

// CatalogResponse lists the permission catalog grouped by category.
type CatalogResponse struct {
	Categories []CatalogCategory `json:"categories"`
}

// CatalogCategory is one category with its entries in definition order.
type CatalogCategory struct {
	Name     string           `json:"name"`
	Policies []catalog.Policy `json:"policies"`
}

// RegisterCatalogEndpoint registers GET /catalog on the protected router.
func RegisterCatalogEndpoint(srv *server.Server, protect func(http.Handler) http.Handler) {
	srv.Router.Handle(
		"/catalog",
		protect(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			grouped := srv.Catalog.ByCategory()

			response := CatalogResponse{}
			for _, name := range srv.Catalog.Categories() {
				response.Categories = append(response.Categories, CatalogCategory{
					Name:     name,
					Policies: grouped[name],
				})
			}

			writeJSON(writer, http.StatusOK, response)
		})),
	).Methods("GET")
}
