package handlers

import "github.com/serroba/shortlinks/internal/links"

// CreateLinkRequest is the request for creating a link.
type CreateLinkRequest struct {
	Body struct {
		URL        string `doc:"The destination URL"               example:"https://example.com/very/long/path" json:"url"`
		CustomSlug string `doc:"Optional custom short code (3-20)" example:"my-link"                            json:"customSlug,omitempty" required:"false"`
	}
}

// CreateLinkResponse is the response for a successfully created link.
type CreateLinkResponse struct {
	Body links.Link
}

// UpdateLinkRequest is the request for updating a link.
type UpdateLinkRequest struct {
	ID   int64 `doc:"The link id" path:"id"`
	Body struct {
		URL        string `doc:"The destination URL"                          example:"https://example.com/new/path" json:"url"`
		CustomSlug string `doc:"Optional replacement short code; empty keeps" example:"my-link"                      json:"customSlug,omitempty" required:"false"`
	}
}

// UpdateLinkResponse is the response for a successfully updated link.
type UpdateLinkResponse struct {
	Body links.Link
}

// DeleteLinkRequest is the request for deleting a link.
type DeleteLinkRequest struct {
	ID int64 `doc:"The link id" path:"id"`
}

// DeleteLinkResponse is the empty response for a successful delete.
type DeleteLinkResponse struct{}

// ListLinksResponse is the response for listing the caller's links, most
// recently updated first.
type ListLinksResponse struct {
	Body struct {
		Links []links.Link `json:"links"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse carries the redirect status and Location header.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The destination URL" header:"Location"`
	}
}
