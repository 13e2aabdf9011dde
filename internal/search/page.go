package search

// Page is one window of search results plus the metadata needed to walk the rest.
type Page[T any] struct {
	Content          []T   `json:"content"`
	PageNumber       int   `json:"pageNumber"`
	PageSize         int   `json:"pageSize"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
	Empty            bool  `json:"empty"`
}

// NewPage assembles a page. pageSize must be positive.
func NewPage[T any](content []T, pageNumber, pageSize int, totalElements int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := TotalPages(totalElements, pageSize)
	return &Page[T]{
		Content:          content,
		PageNumber:       pageNumber,
		PageSize:         pageSize,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		First:            pageNumber == 0,
		Last:             totalPages == 0 || pageNumber >= totalPages-1,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}

// TotalPages is ceil(total/size), zero when nothing matched
func TotalPages(totalElements int64, pageSize int) int {
	if totalElements <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((totalElements + size - 1) / size)
}

// MapPage converts the content of a page while keeping its metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return &Page[U]{
		Content:          content,
		PageNumber:       p.PageNumber,
		PageSize:         p.PageSize,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		First:            p.First,
		Last:             p.Last,
		NumberOfElements: p.NumberOfElements,
		Empty:            p.Empty,
	}
}
