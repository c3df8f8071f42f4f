package repository

// Pagination over already-filtered local slices; the local backend has no
// query engine, so filtering happens in memory.
func paginate(length, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= length {
		return 0, 0
	}
	end := length
	if limit > 0 && offset+limit < length {
		end = offset + limit
	}
	return offset, end
}

func matchesFilter(fields map[string]interface{}, filter map[string]interface{}) bool {
	for key, want := range filter {
		if fields[key] != want {
			return false
		}
	}
	return true
}
