package mongo

import (
	"regexp"

	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pure query constructors. Keeping these separate from the repositories makes
// the visibility and narrowing rules testable without a live database.

// containsPattern builds a case-insensitive substring match. The user input
// is quoted so regex metacharacters match literally.
func containsPattern(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

// ExerciseListFilter translates an ExerciseFilter into a mongo query
// document. Empty filter fields contribute nothing.
func ExerciseListFilter(f repository.ExerciseFilter) bson.M {
	query := bson.M{}
	if f.MuscleGroup != "" {
		query["muscleGroup"] = f.MuscleGroup
	}
	if f.Difficulty != "" {
		query["difficulty"] = f.Difficulty
	}
	if f.Equipment != "" {
		query["equipment"] = f.Equipment
	}
	if f.Search != "" {
		query["name"] = containsPattern(f.Search)
	}
	return query
}

// PlanVisibilityFilter yields the read-visibility predicate for workout
// plans: anonymous viewers see public plans only, authenticated viewers
// additionally see their own private plans.
func PlanVisibilityFilter(viewer *primitive.ObjectID) bson.M {
	if viewer == nil {
		return bson.M{"isPublic": true}
	}
	return bson.M{"$or": bson.A{
		bson.M{"isPublic": true},
		bson.M{"createdBy": *viewer},
	}}
}

// PlanListFilter combines the visibility predicate with the optional
// narrowing filters. The search clause is its own $or over title and
// description, so it is joined to the visibility $or with $and rather than
// being merged into the same document.
func PlanListFilter(f repository.PlanFilter) bson.M {
	clauses := bson.A{PlanVisibilityFilter(f.Viewer)}

	narrowing := bson.M{}
	if f.Category != "" {
		narrowing["category"] = f.Category
	}
	if f.Difficulty != "" {
		narrowing["difficulty"] = f.Difficulty
	}
	if len(narrowing) > 0 {
		clauses = append(clauses, narrowing)
	}

	if f.Search != "" {
		pattern := containsPattern(f.Search)
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}})
	}

	if len(clauses) == 1 {
		return PlanVisibilityFilter(f.Viewer)
	}
	return bson.M{"$and": clauses}
}
