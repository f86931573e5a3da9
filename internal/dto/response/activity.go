package response

import "cinema-ticketing/internal/data/entity"

func ActivitiesToResponse(entries []*entity.ActivityEntry) []entity.ActivityEntry {
	out := make([]entity.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out
}
