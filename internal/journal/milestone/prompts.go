package milestone

import "math/rand"

// reflectionPrompts holds five canned introspective questions per milestone
// type. TypeOther doubles as the fallback for unrecognized keys, so the
// lookup can never come back empty.
var reflectionPrompts = map[string][5]string{
	TypeBirthday: {
		"What made this year different from the last?",
		"What's one thing you learned about yourself this year?",
		"Who made the biggest difference in your life recently?",
		"What are you most looking forward to in the year ahead?",
		"What would you tell yourself a year ago?",
	},
	TypeAnniversary: {
		"What moment from this relationship do you treasure most?",
		"How have you grown together since this began?",
		"What small everyday thing are you grateful for?",
		"What challenge did you overcome together this year?",
		"What do you hope the next year brings for you both?",
	},
	TypeGraduation: {
		"What was the hardest part of getting here?",
		"Who helped you along the way, and how?",
		"What surprised you most about this journey?",
		"What skill are you proudest of building?",
		"Where do you hope this takes you next?",
	},
	TypeCareer: {
		"What does this step mean for where you want to go?",
		"What risk paid off to get you here?",
		"What did you have to let go of to move forward?",
		"Who do you want to thank for this milestone?",
		"What does success look like from here?",
	},
	TypeTravel: {
		"What sight or sound will stay with you longest?",
		"How did this place change how you see home?",
		"What did you do there that you'd never done before?",
		"Who did you meet that left an impression?",
		"Where does this trip make you want to go next?",
	},
	TypeOther: {
		"Why does this moment matter to you?",
		"What led up to this day?",
		"How do you feel right now, in one honest sentence?",
		"What do you want to remember about this in ten years?",
		"What comes after this milestone?",
	},
}

// ReflectionPrompts returns the five prompts for a milestone type. An unknown
// or empty type falls back to the TypeOther set.
func ReflectionPrompts(milestoneType string) []string {
	prompts, ok := reflectionPrompts[milestoneType]
	if !ok {
		prompts = reflectionPrompts[TypeOther]
	}

	return prompts[:]
}

// RandomReflectionPrompt picks one prompt uniformly at random for the type.
func RandomReflectionPrompt(milestoneType string) string {
	prompts := ReflectionPrompts(milestoneType)
	return prompts[rand.Intn(len(prompts))]
}
