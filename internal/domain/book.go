package domain

// Book is a browsable book record served by the content API.
// Total chapter count may exceed catalog coverage: chapters 1..TotalChapters
// are enumerable in the UI even when no audio exists for some of them.
type Book struct {
	ID            string `json:"book_id"`
	Name          string `json:"book_name"`
	TotalChapters int    `json:"total_chapters"`
	Cover         string `json:"book_cover"`
	Testament     string `json:"book_testament"`
}
