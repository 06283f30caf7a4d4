package models

type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ImagePath    string `json:"imagePath,omitempty"`
}

// CategoryDraft is a category being created (zero CategoryID) or updated.
type CategoryDraft struct {
	CategoryID   int64
	CategoryName string
	Image        *ImageFile
}

// CategoryName resolves a category id against a list, "N/A" when unknown.
func CategoryName(categories []Category, id int64) string {
	for _, c := range categories {
		if c.CategoryID == id {
			return c.CategoryName
		}
	}
	return "N/A"
}
