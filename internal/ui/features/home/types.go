// Package home provides the public marketing page.
package home

import "time"

// SlideInterval is how long each slide stays on screen.
const SlideInterval = 5 * time.Second

// Slide is one panel of the homepage slideshow.
type Slide struct {
	Title       string
	Description string
}

// Feature is one item of the feature grid.
type Feature struct {
	Title       string
	Description string
}

// Slides rotate in order and wrap around.
var Slides = []Slide{
	{
		Title:       "Effortless Document Management",
		Description: "Streamline your business processes with secure uploads, electronic signatures, and easy meeting scheduling.",
	},
	{
		Title:       "Secure and Reliable",
		Description: "Keep your business documents safe and accessible.",
	},
	{
		Title:       "Collaborate with Ease",
		Description: "Work with your team and clients in one platform.",
	},
}

// Features are listed under the slideshow.
var Features = []Feature{
	{Title: "Secure Document Uploads", Description: "Upload and manage your business documents in one place."},
	{Title: "Electronic Signatures", Description: "Send documents for signature to any number of recipients."},
	{Title: "Agreement Tracking", Description: "Follow every envelope from upload to signature."},
}
