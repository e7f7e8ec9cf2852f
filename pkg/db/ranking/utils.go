package ranking

func getTotalPages(totalCount int64, limit int64) int64 {
	if limit == 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}

// prepPaginationInfos clamps page into the available range. Page numbers start
// at 1.
func prepPaginationInfos(totalCount int64, page int64, limit int64) *PaginationInfos {
	if limit < 1 {
		limit = 10
	}
	totalPages := getTotalPages(totalCount, limit)
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return &PaginationInfos{
		TotalCount:  totalCount,
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    limit,
	}
}
