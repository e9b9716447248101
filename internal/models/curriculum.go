package models

type Class struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Level is 1 through 12.
	Level int `json:"level"`
}

type Subject struct {
	ID       int64  `json:"id"`
	ClassID  int64  `json:"class_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	BookCode string `json:"book_code"`
}

type Chapter struct {
	ID            int64  `json:"id"`
	SubjectID     int64  `json:"subject_id"`
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	PDFURL        string `json:"pdf_url"`
}
