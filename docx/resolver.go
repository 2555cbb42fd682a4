package docx

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the resolved properties of a paragraph style.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Heading info
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles       map[string]*styleDefXML
	resolved     map[string]*ResolvedStyle
	defaultStyle string
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && style.Default == "1" {
			sr.defaultStyle = style.StyleID
		}
	}

	return sr
}

// Resolve returns the resolved style for the given style ID. An empty ID
// resolves to the document's default paragraph style.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		styleID = sr.defaultStyle
	}
	if styleID == "" {
		return &ResolvedStyle{Name: "Normal", Type: "paragraph"}
	}

	// Check cache
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID, Type: "paragraph"}

	styleDef, ok := sr.styles[styleID]
	if !ok {
		// Style not found - check for built-in heading styles
		resolved.Name = styleID
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	if styleDef.Type != "" {
		resolved.Type = styleDef.Type
	}
	resolved.IsHeading, resolved.HeadingLevel = sr.detectHeading(styleDef)

	sr.resolved[styleID] = resolved
	return resolved
}

// buildInheritanceChain returns style IDs from derived to base.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append(chain, current)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// detectHeading determines if a style represents a heading.
func (sr *StyleResolver) detectHeading(def *styleDefXML) (bool, int) {
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	if level := headingLevelFromName(def.Name.Val); level > 0 {
		return true, level
	}

	// Outline level may be inherited from a base style
	for _, sid := range sr.buildInheritanceChain(def.StyleID) {
		base := sr.styles[sid]
		if base == nil || base.PPr.OutlineLvl.Val == "" {
			continue
		}
		level := parseOutlineLevel(base.PPr.OutlineLvl.Val)
		if level >= 0 && level <= 8 {
			return true, level + 1 // OutlineLvl is 0-based
		}
		break
	}

	return false, 0
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)
	if !strings.HasPrefix(id, "heading") {
		return false, 0
	}
	level, err := strconv.Atoi(strings.TrimPrefix(id, "heading"))
	if err != nil || level < 1 || level > 9 {
		return false, 0
	}
	return true, level
}

// headingLevelFromName extracts N from style names like "Heading N".
// A bare "Heading" name counts as level 1.
func headingLevelFromName(name string) int {
	lower := strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(lower, "heading") {
		return 0
	}
	rest := strings.TrimSpace(strings.TrimPrefix(lower, "heading"))
	if rest == "" {
		return 1
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 || level > 9 {
		return 0
	}
	return level
}

// parseOutlineLevel parses a 0-based outline level value.
func parseOutlineLevel(s string) int {
	val, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return val
}
