package mongostore

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/maxwharris/Produck/internal/store"
)

// containsPattern turns user text into a literal case-insensitive regex.
func containsPattern(text string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
}

func productFilterDocument(filter store.ProductFilter) bson.M {
	doc := bson.M{}
	var clauses []bson.M

	if filter.OwnerID != nil {
		doc["userId"] = *filter.OwnerID
	}
	if c := filter.Category; c != nil {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"categoryId": c.ID},
			{"categoryId": bson.M{"$exists": false}, "category": c.Name},
		}})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"name": containsPattern(search)},
			{"description": containsPattern(search)},
		}})
	}

	if len(clauses) > 0 {
		doc["$and"] = clauses
	}
	return doc
}

// productUpdateDocument splits a patch into $set and $unset fields.
func productUpdateDocument(patch store.ProductPatch) (updateSet, updateUnset bson.M) {
	updateSet = bson.M{}
	updateUnset = bson.M{}

	if patch.Name != nil {
		updateSet["name"] = *patch.Name
	}
	if patch.CategoryID != nil {
		updateSet["categoryId"] = *patch.CategoryID
	} else if patch.UnsetCategoryID {
		updateUnset["categoryId"] = ""
	}
	if patch.Category != nil {
		updateSet["category"] = *patch.Category
	}
	if patch.PurchaseDate != nil {
		updateSet["purchaseDate"] = *patch.PurchaseDate
	}
	if patch.Cost != nil {
		updateSet["cost"] = *patch.Cost
	}
	if patch.Description != nil {
		updateSet["description"] = *patch.Description
	}
	if patch.UPC != nil {
		updateSet["upc"] = *patch.UPC
	}
	return updateSet, updateUnset
}

func categoryUpdateDocument(patch store.CategoryPatch) bson.M {
	updateSet := bson.M{}
	if patch.Name != nil {
		updateSet["name"] = *patch.Name
	}
	if patch.Color != nil {
		updateSet["color"] = *patch.Color
	}
	return updateSet
}

func reviewUpdateDocument(patch store.ReviewPatch) bson.M {
	updateSet := bson.M{}
	if patch.Rating != nil {
		updateSet["rating"] = *patch.Rating
	}
	if patch.Blurb != nil {
		updateSet["blurb"] = *patch.Blurb
	}
	if patch.Photos != nil {
		updateSet["photos"] = *patch.Photos
	}
	if patch.Cost != nil {
		updateSet["cost"] = *patch.Cost
	}
	if patch.TimeUsed != nil {
		updateSet["timeUsed"] = *patch.TimeUsed
	}
	return updateSet
}

// withTimestamp builds the final update document, always bumping updatedAt.
func withTimestamp(updateSet, updateUnset bson.M, now interface{}) bson.M {
	updateSet["updatedAt"] = now
	update := bson.M{"$set": updateSet}
	if len(updateUnset) > 0 {
		update["$unset"] = updateUnset
	}
	return update
}

// categorySyncDocument copies a category's current name onto linked products.
func categorySyncDocument(name string, unlink bool) bson.M {
	update := bson.M{"$set": bson.M{"category": name}}
	if unlink {
		update["$unset"] = bson.M{"categoryId": ""}
	}
	return update
}
