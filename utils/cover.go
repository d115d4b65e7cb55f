package utils

import "math/rand"

// Cover images served from the frontend's public directory
var interviewCovers = []string{
	"/covers/adobe.png",
	"/covers/amazon.png",
	"/covers/facebook.png",
	"/covers/hostinger.png",
	"/covers/pinterest.png",
	"/covers/quora.png",
	"/covers/reddit.png",
	"/covers/skype.png",
	"/covers/spotify.png",
	"/covers/telegram.png",
	"/covers/tiktok.png",
	"/covers/yahoo.png",
}

// RandomInterviewCover picks a cover image for a newly created interview
func RandomInterviewCover() string {
	return interviewCovers[rand.Intn(len(interviewCovers))]
}
