package view

// ModalKind selects the modal variant.
type ModalKind int

const (
	ArticleModal ModalKind = iota
	PDFModal
)

// Element ids of the two modal variants.
const (
	ArticleModalID = "articleModal"
	PDFModalID     = "pdfModal"
)

// Modal is the single detail viewer of a page. It starts hidden and is
// reused: showing a new item replaces the previous content.
type Modal struct {
	ID      string
	Kind    ModalKind
	Open    bool
	Title   string
	Article *ArticleDetail
	// Src is the document shown by the PDF viewer. A closed viewer has no
	// source; the page script clears it on every dismissal.
	Src string
}

// NewModal creates a hidden modal of the given kind.
func NewModal(kind ModalKind) *Modal {
	id := ArticleModalID
	if kind == PDFModal {
		id = PDFModalID
	}
	return &Modal{ID: id, Kind: kind}
}

// ShowArticle opens the modal on an article.
func (m *Modal) ShowArticle(d ArticleDetail) {
	m.Article = &d
	m.Title = d.Title
	m.Open = true
}

// ShowPDF opens the viewer on src. Without a source nothing happens and
// ShowPDF returns false.
func (m *Modal) ShowPDF(title, src string) bool {
	if src == "" {
		return false
	}
	m.Title = title
	m.Src = src
	m.Open = true
	return true
}
