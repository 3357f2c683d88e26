package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the link management API and the public redirect
// endpoint.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler, redirectHandler *RedirectHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-link",
		Method:        http.MethodPost,
		Path:          "/api/links",
		Summary:       "Create link",
		Description:   "Creates a short link for the authenticated owner, generating a code when no custom slug is given.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, linkHandler.CreateLink)

	huma.Register(api, huma.Operation{
		OperationID: "update-link",
		Method:      http.MethodPatch,
		Path:        "/api/links/{id}",
		Summary:     "Update link",
		Description: "Updates the destination URL and optionally the short code of an owned link.",
		Tags:        []string{"Links"},
	}, linkHandler.UpdateLink)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/api/links/{id}",
		Summary:       "Delete link",
		Description:   "Deletes an owned link. Deleting an absent or foreign link reports not found.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, linkHandler.DeleteLink)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/api/links",
		Summary:     "List links",
		Description: "Lists the authenticated owner's links, most recently updated first.",
		Tags:        []string{"Links"},
	}, linkHandler.ListLinks)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to destination URL",
		Description: "Resolves a short code and redirects to the stored URL after re-validating it.",
		Tags:        []string{"Redirect"},
	}, redirectHandler.Redirect)
}
