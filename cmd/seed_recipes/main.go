package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/migrations"
)

var sampleRecipes = []model.RecipeInput{
	{Name: "Pancakes", Category: "Breakfast", Recipe: "Whisk flour, milk, eggs and a pinch of salt. Fry ladlefuls in a buttered pan until golden on both sides."},
	{Name: "Tomato Soup", Category: "Soup", Recipe: "Soften onion and garlic in olive oil, add tinned tomatoes and stock, simmer 20 minutes and blend."},
	{Name: "Spaghetti Aglio e Olio", Category: "Pasta", Recipe: "Cook spaghetti. Gently fry sliced garlic and chili flakes in olive oil, toss with the pasta and parsley."},
	{Name: "Greek Salad", Category: "Salad", Recipe: "Combine tomato, cucumber, red onion, olives and feta. Dress with olive oil and oregano."},
	{Name: "Chicken Curry", Category: "Dinner", Recipe: "Brown chicken, add onion, ginger, garlic and curry paste, then coconut milk. Simmer until tender."},
	{Name: "Banana Bread", Category: "Baking", Recipe: "Mash ripe bananas, mix with butter, sugar, egg and flour. Bake at 175C for about an hour."},
	{Name: "Guacamole", Category: "Snack", Recipe: "Mash avocados with lime juice, salt, chopped onion, tomato and cilantro."},
	{Name: "Apple Crumble", Category: "Dessert", Recipe: "Slice apples into a dish, top with rubbed-in flour, butter and sugar. Bake until bubbling."},
}

func main() {
	count := flag.Int("n", len(sampleRecipes), "Number of sample recipes to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(ctx, db, migrations.FS, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	images, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	recipeService := service.NewRecipeService(database.NewRecipeStore(db), images, cfg.PublicBaseURL, log, nil)

	created := 0
	for i := 0; i < *count; i++ {
		input := sampleRecipes[i%len(sampleRecipes)]
		recipe, err := recipeService.CreateRecipe(ctx, input)
		if err != nil {
			log.WithError(err).WithField("name", input.Name).Error("Failed to create recipe")
			continue
		}
		log.WithField("id", recipe.ID).WithField("name", recipe.Name).Info("Created recipe")
		created++
	}

	log.WithField("created", created).Info("Seeding complete")
}
