package seeds

import (
	"log"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

func SeedBadges() {
	log.Println("Seeding badge definitions...")

	badges := []models.Badge{
		{
			Name:        "First Steps",
			Description: "Offset your first ton of CO2.",
			Icon:        "leaf",
			Category:    models.BadgeCategoryImpact,
			Condition:   services.ConditionTotalOffset,
			Threshold:   1,
		},
		{
			Name:        "Carbon Saver",
			Description: "Offset 10 tons of CO2.",
			Icon:        "cloud-off",
			Category:    models.BadgeCategoryImpact,
			Condition:   services.ConditionTotalOffset,
			Threshold:   10,
		},
		{
			Name:        "Climate Champion",
			Description: "Offset 100 tons of CO2. A true climate hero.",
			Icon:        "award",
			Category:    models.BadgeCategoryImpact,
			Condition:   services.ConditionTotalOffset,
			Threshold:   100,
		},
		{
			Name:        "Seedling",
			Description: "Planted your first tree.",
			Icon:        "sprout",
			Category:    models.BadgeCategoryPlanting,
			Condition:   services.ConditionTreesPlanted,
			Threshold:   1,
		},
		{
			Name:        "Grove Keeper",
			Description: "Planted 25 trees.",
			Icon:        "trees",
			Category:    models.BadgeCategoryPlanting,
			Condition:   services.ConditionTreesPlanted,
			Threshold:   25,
		},
		{
			Name:        "Forest Builder",
			Description: "Planted 100 trees.",
			Icon:        "mountain",
			Category:    models.BadgeCategoryPlanting,
			Condition:   services.ConditionTreesPlanted,
			Threshold:   100,
		},
		{
			Name:        "Recycler",
			Description: "Recycled your first kilogram of plastic.",
			Icon:        "recycle",
			Category:    models.BadgeCategoryRecycling,
			Condition:   services.ConditionPlasticRecycled,
			Threshold:   1,
		},
		{
			Name:        "Waste Warrior",
			Description: "Recycled 50 kilograms of plastic.",
			Icon:        "trash-2",
			Category:    models.BadgeCategoryRecycling,
			Condition:   services.ConditionPlasticRecycled,
			Threshold:   50,
		},
		{
			Name:        "Impact Legend",
			Description: "Reached an impact score of 1000.",
			Icon:        "star",
			Category:    models.BadgeCategoryImpact,
			Condition:   services.ConditionImpactScore,
			Threshold:   1000,
		},
	}

	for _, b := range badges {
		var existing models.Badge
		if err := database.DB.Where("name = ?", b.Name).First(&existing).Error; err == nil {
			continue
		}

		if err := database.DB.Create(&b).Error; err != nil {
			log.Printf("Failed to create badge %s: %v", b.Name, err)
		} else {
			log.Printf("Badge defined: %s", b.Name)
		}
	}
}
