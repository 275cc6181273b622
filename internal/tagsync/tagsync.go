// Package tagsync computes the changes needed to bring a product's stored
// tag associations in line with a requested set of tag IDs.
package tagsync

import "catalog/backend/internal/models"

// Plan is the outcome of a reconciliation: association rows to insert and
// the IDs of association rows to delete. No tag appears in both.
type Plan struct {
	Add    []models.ProductTag
	Remove []uint
}

// Empty reports whether applying the plan would change nothing.
func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// Reconcile diffs the current associations of a product against the target
// tag IDs. Target is treated as a set: duplicates collapse and order only
// decides the order of Add. Tag IDs are not checked against existing tags.
func Reconcile(productID uint, current []models.ProductTag, target []uint) Plan {
	currentTagIDs := make(map[uint]struct{}, len(current))
	for _, pt := range current {
		currentTagIDs[pt.TagID] = struct{}{}
	}

	targetTagIDs := make(map[uint]struct{}, len(target))
	var plan Plan
	for _, tagID := range target {
		if _, seen := targetTagIDs[tagID]; seen {
			continue
		}
		targetTagIDs[tagID] = struct{}{}
		if _, ok := currentTagIDs[tagID]; !ok {
			plan.Add = append(plan.Add, models.ProductTag{ProductID: productID, TagID: tagID})
		}
	}

	for _, pt := range current {
		if _, keep := targetTagIDs[pt.TagID]; !keep {
			plan.Remove = append(plan.Remove, pt.ID)
		}
	}

	return plan
}

// TagIDs returns the distinct tag IDs of the given associations in the order
// they first appear.
func TagIDs(associations []models.ProductTag) []uint {
	seen := make(map[uint]struct{}, len(associations))
	ids := make([]uint, 0, len(associations))
	for _, pt := range associations {
		if _, ok := seen[pt.TagID]; ok {
			continue
		}
		seen[pt.TagID] = struct{}{}
		ids = append(ids, pt.TagID)
	}
	return ids
}
