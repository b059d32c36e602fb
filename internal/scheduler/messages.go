package scheduler

import "fmt"

func morningGreeting(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Good morning, %s! How did you sleep? Answer the morning check-in to keep your streak going.", name)
}

func eveningReminder(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Good evening, %s! Time for the evening check-in: mood, steps and activity for today.", name)
}

func waterReminder() string {
	return "Time for a glass of water. Log it with the water button to count it toward your daily norm."
}
