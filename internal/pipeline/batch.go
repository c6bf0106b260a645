package pipeline

// Page is one rendered page image on disk. Number is the page's 1-based
// position in the original document; it survives batching so page-tagged
// output fields (valores_mencionados, referencias) stay correct.
type Page struct {
	Number int
	Path   string
}

// NumberPages assigns 1-based sequence numbers to rendered page paths in
// their given order.
func NumberPages(paths []string) []Page {
	pages := make([]Page, len(paths))
	for i, p := range paths {
		pages[i] = Page{Number: i + 1, Path: p}
	}
	return pages
}

// Chunk partitions pages into consecutive, non-overlapping groups of at most
// max pages each, preserving order. The final group may be smaller.
func Chunk(pages []Page, max int) [][]Page {
	if max <= 0 {
		max = 1
	}
	var groups [][]Page
	for i := 0; i < len(pages); i += max {
		end := i + max
		if end > len(pages) {
			end = len(pages)
		}
		groups = append(groups, pages[i:end])
	}
	return groups
}
