package view

// Literal page text.
const (
	NoArticles      = "No articles found. Check back soon for new content!"
	ArticlesError   = "Error loading articles. Please try again later."
	NoScripts       = "No scripts found for this category."
	ScriptsError    = "Error loading scripts. Please try again later."
	NoNiches        = "No niches available."
	NoRecent        = "No recent articles available."
	NoSections      = "No sections available for this template"
	NoPrompts       = "No prompts available."
	Uncategorized   = "Uncategorized"
	NicheFallback   = "Explore our collection of scripts in this category"
	NoImage         = "No Image"
	NoThumbnail     = "No Thumbnail"
	NoContent       = "Content not available."
	ViewScript      = "View Script"
	PDFNotAvailable = "PDF Not Available"
	SelectTemplate  = "-- Select a Professional Template --"

	SectionTitleFallback   = "Professional Template Section"
	SectionContentFallback = "Advanced AI prompt content for professional YouTube script generation..."

	StatusPromptsLoaded  = "Professional templates loaded"
	StatusDemoMode       = "Demo mode - Templates loading..."
	StatusTemplateReady  = "Template ready for editing"
	StatusSectionsFailed = "Error loading template sections"
	StatusSaved          = "Professional template saved successfully"
)

var (
	articlePlaceholders = Placeholders{Empty: NoArticles, Error: ArticlesError}
	scriptPlaceholders  = Placeholders{Empty: NoScripts, Error: ScriptsError}
	nichePlaceholders   = Placeholders{Empty: NoNiches}
	recentPlaceholders  = Placeholders{Empty: NoRecent}
	sectionPlaceholders = Placeholders{Empty: NoSections}
)
