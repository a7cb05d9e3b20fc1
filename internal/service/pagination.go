package service

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// paginate clamps page into [1, totalPages] and returns the visible slice
// bounds. An out-of-range page never fails, it lands on the nearest page.
func paginate(total, page, size int) (int, int, Pagination) {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return start, end, Pagination{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}
