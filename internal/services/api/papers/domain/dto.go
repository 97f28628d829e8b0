// Package domain holds DTOs for papers http and service contracts
package domain

// QueryInput are the parameters for the paper listing endpoint
type QueryInput struct {
	Category    string `form:"category" validate:"required,min=1,max=32" example:"cs.CV"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02" example:"2024-03-01"`
	From        string `form:"from" validate:"omitempty,datetime=2006-01-02" example:"2024-02-01"`
	To          string `form:"to" validate:"omitempty,datetime=2006-01-02" example:"2024-02-28"`
	Search      string `form:"search" validate:"omitempty,max=200" example:"gaussian splatting"`
	SearchScope string `form:"searchScope" validate:"omitempty,oneof=all current" example:"current"`
	Page        int    `form:"page" validate:"omitempty,min=1" example:"1"`
	Limit       int    `form:"limit" validate:"omitempty,min=1" example:"100"`
	Consistency string `form:"consistency"`

	// set by the transport, never bound from the query string
	RemoteIP string `form:"-" json:"-"`
}

// DatesInput are the parameters for the date histogram endpoint
type DatesInput struct {
	Category string `form:"category" validate:"required,min=1,max=32" example:"cs.CV"`

	RemoteIP string `form:"-" json:"-"`
}

// Figure is an extracted figure attached to a paper
type Figure struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Key      string `json:"key"`
	ThumbKey string `json:"thumb_key,omitempty"`
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
}

// Paper is one result row
type Paper struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Categories      []string `json:"categories"`
	PrimaryCategory string   `json:"primary_category"`
	Abstract        string   `json:"abstract"`
	SubmittedDate   string   `json:"submitted_date"`
	AnnounceDate    string   `json:"announce_date,omitempty"`
	ScrapedDate     string   `json:"scraped_date"`
	PdfURL          string   `json:"pdf_url,omitempty"`
	CodeURL         string   `json:"code_url,omitempty"`
	ProjectURL      string   `json:"project_url,omitempty"`
	Comments        string   `json:"comments,omitempty"`
	CreatedAt       string   `json:"created_at"`
	Figures         []Figure `json:"figures"`
}

// Pagination is the offset window echoed with each page
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// Filters echoes the filters the query actually applied
type Filters struct {
	Category    string `json:"category"`
	Date        string `json:"date,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Search      string `json:"search,omitempty"`
	SearchScope string `json:"search_scope,omitempty"`
}

// QueryOutput is the paper listing payload
type QueryOutput struct {
	Results          []Paper    `json:"results"`
	Pagination       Pagination `json:"pagination"`
	Filters          Filters    `json:"filters"`
	ConsistencyToken string     `json:"consistency_token,omitempty"`
}

// DateCount is one histogram bucket
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DatesOutput is the histogram payload
type DatesOutput struct {
	Category string      `json:"category"`
	Dates    []DateCount `json:"dates"`
}
