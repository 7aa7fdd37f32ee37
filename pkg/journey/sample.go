package journey

// Sample returns the built-in journey shown when the editor starts.
func Sample() Journey {
	return Journey{
		Title:       "Fake Journey",
		Description: "This is a description of the Fake journey.",
		Chapters: []Chapter{
			{
				Title: "Chapter 1",
				Events: []Event{
					{Title: "Keycloak login page is shown.", Tags: []string{"Keycloak"}},
					{Title: "The user fills in its credentials and fires login.", Tags: []string{"User"}},
					{Title: "Keycloak validates the user's credentials and then verifies if the user exists in its database.", Tags: []string{"Keycloak"}},
					{Title: "If the user doesn't exist, Keycloak will request the User's data to AC Cloud api.auth2 backend.", Tags: []string{"Keycloak", "Python backend"}},
				},
			},
			{
				Title: "Chapter 2",
				Events: []Event{
					{Title: "Chapter 2, event A", Tags: []string{}},
					{Title: "Chapter 2, event B", Tags: []string{}},
					{Title: "Chapter 2, event C", Tags: []string{}},
				},
			},
			{
				Title: "Chapter 3",
				Events: []Event{
					{Title: "Chapter 3, event A", Tags: []string{}},
					{Title: "Chapter 3, event B", Tags: []string{}},
					{Title: "Chapter 3, event C", Tags: []string{}},
					{Title: "Chapter 3, event D", Tags: []string{}},
				},
			},
		},
	}
}
