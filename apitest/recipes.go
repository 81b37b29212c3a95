package apitest

import "github.com/robertmeta/recipe-cli/model"

// SampleRecipes returns the catalogue the fake API starts with.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:                 1,
			Name:               "Fluffy Pancakes",
			CuisinePath:        "/Breakfast and Brunch/Pancakes/",
			TotalTime:          "25 mins",
			TotalTimeMinutes:   25,
			PrepTime:           "10 mins",
			CookTime:           "15 mins",
			Servings:           4,
			Rating:             4.7,
			Ingredients:        "1 cup flour, 2 eggs, 1 cup milk, 1 tbsp sugar, 2 tsp baking powder",
			CleanedIngredients: "flour, eggs, milk, sugar, baking powder",
			Nutrition:          "Calories 210, Fat 6g, Protein 8g",
			Directions:         "Whisk the dry ingredients.\nBeat in eggs and milk.\n\nCook on a hot griddle until golden.",
			ImageURL:           "https://images.example.com/pancakes.jpg",
			Category:           "Breakfast",
			MainCategory:       "Breakfast and Brunch",
		},
		{
			ID:                 2,
			Name:               "Garlic Butter Chicken",
			CuisinePath:        "/Main Dishes/Chicken/",
			TotalTime:          "40 mins",
			TotalTimeMinutes:   40,
			PrepTime:           "10 mins",
			CookTime:           "30 mins",
			Servings:           4,
			Rating:             4.5,
			Ingredients:        "4 chicken thighs, 4 cloves garlic, 3 tbsp butter, salt, pepper",
			CleanedIngredients: "chicken, garlic, butter, salt, pepper",
			Nutrition:          "Calories 420, Fat 28g, Protein 36g",
			Directions:         "Season the chicken.\nSear skin side down.\nBaste with garlic butter and finish in the oven.",
			ImageURL:           "https://images.example.com/chicken.jpg",
			Category:           "Dinner",
			MainCategory:       "Main Dishes",
		},
		{
			ID:                 3,
			Name:               "Veggie Omelette",
			CuisinePath:        "/Breakfast and Brunch/Eggs/",
			TotalTime:          "15 mins",
			TotalTimeMinutes:   15,
			PrepTime:           "5 mins",
			CookTime:           "10 mins",
			Servings:           1,
			Rating:             4.3,
			Ingredients:        "3 eggs, 1/4 cup milk, 1/2 bell pepper, 1 handful spinach",
			CleanedIngredients: "eggs, milk, bell pepper, spinach",
			Nutrition:          "Calories 280, Fat 18g, Protein 20g",
			Directions:         "Whisk eggs with milk.\nSaute the vegetables.\nPour in eggs and fold when set.",
			ImageURL:           "https://images.example.com/omelette.jpg",
			Category:           "Breakfast",
			MainCategory:       "Breakfast and Brunch",
		},
		{
			ID:                 4,
			Name:               "Chocolate Mousse",
			CuisinePath:        "/Desserts/Mousse/",
			TotalTime:          "2 hrs 20 mins",
			TotalTimeMinutes:   140,
			PrepTime:           "20 mins",
			CookTime:           "0 mins",
			Servings:           6,
			Rating:             4.8,
			Ingredients:        "200g dark chocolate, 3 eggs, 2 tbsp sugar, 1 cup cream",
			CleanedIngredients: "chocolate, eggs, sugar, cream",
			Nutrition:          "Calories 350, Fat 25g, Protein 6g",
			Directions:         "Melt the chocolate.\nWhip the cream.\nFold everything together and chill for two hours.",
			ImageURL:           "https://images.example.com/mousse.jpg",
			Category:           "Dessert",
			MainCategory:       "Desserts",
		},
		{
			ID:                 5,
			Name:               "Tomato Basil Pasta",
			CuisinePath:        "/Main Dishes/Pasta/",
			TotalTime:          "30 mins",
			TotalTimeMinutes:   30,
			PrepTime:           "10 mins",
			CookTime:           "20 mins",
			Servings:           2,
			Rating:             4.4,
			Ingredients:        "200g spaghetti, 4 tomatoes, 2 cloves garlic, fresh basil, olive oil",
			CleanedIngredients: "spaghetti, tomatoes, garlic, basil, olive oil",
			Nutrition:          "Calories 480, Fat 12g, Protein 15g",
			Directions:         "Boil the pasta.\nCook garlic and tomatoes in olive oil.\nToss with pasta and basil.",
			ImageURL:           "https://images.example.com/pasta.jpg",
			Category:           "Lunch",
			MainCategory:       "Main Dishes",
		},
	}
}
