package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup is the closed set of muscle group tags.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "Chest"
	MuscleBack      MuscleGroup = "Back"
	MuscleShoulders MuscleGroup = "Shoulders"
	MuscleArms      MuscleGroup = "Arms"
	MuscleLegs      MuscleGroup = "Legs"
	MuscleCore      MuscleGroup = "Core"
	MuscleFullBody  MuscleGroup = "Full Body"
	MuscleCardio    MuscleGroup = "Cardio"
)

// Equipment is the closed set of equipment tags.
type Equipment string

const (
	EquipmentNone           Equipment = "None"
	EquipmentDumbbells      Equipment = "Dumbbells"
	EquipmentBarbell        Equipment = "Barbell"
	EquipmentKettlebell     Equipment = "Kettlebell"
	EquipmentMachine        Equipment = "Machine"
	EquipmentCable          Equipment = "Cable"
	EquipmentResistanceBand Equipment = "Resistance Band"
	EquipmentBodyweight     Equipment = "Bodyweight"
	EquipmentOther          Equipment = "Other"
)

// Difficulty is shared between exercises and workout plans.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Exercise represents a single entry in the exercise library.
// Name is globally unique.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	VideoURL     string             `bson:"videoUrl" json:"videoUrl"`
	Instructions []string           `bson:"instructions" json:"instructions"`
	MuscleGroup  MuscleGroup        `bson:"muscleGroup" json:"muscleGroup"`
	Equipment    Equipment          `bson:"equipment" json:"equipment"`
	Difficulty   Difficulty         `bson:"difficulty" json:"difficulty"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
