package testhelpers

import (
	"time"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// GalleryFixture returns a small gallery covering every filter category
func GalleryFixture() []models.ImageRecord {
	return []models.ImageRecord{
		{URL: "https://images.example.com/photo-1.jpg", Uploader: "artlover99", UploadedAt: ts(2024, 1, 15)},
		{URL: "https://images.example.com/photo-2.jpg", Uploader: "memeKing", UploadedAt: ts(2024, 1, 14)},
		{URL: "https://images.example.com/photo-3.jpg", Uploader: "plainuser", UploadedAt: ts(2024, 1, 13)},
		{URL: "https://images.example.com/photo-4.jpg", Uploader: "cropQueen"},
		{URL: "https://images.example.com/photo-5.jpg", Filename: "sketch-draw-01.png"},
	}
}

// JennaFixture returns jenna records whose URLs hit each category
func JennaFixture() []models.ImageRecord {
	return []models.ImageRecord{
		{URL: "https://images.example.com/redcarpet/premiere.jpg", Alt: "Red Carpet"},
		{URL: "https://images.example.com/street/daily.jpg", Alt: "Casual"},
		{URL: "https://images.example.com/press/interview.jpg", Alt: "Event"},
		{URL: "https://images.example.com/bts/trailer.jpg"},
		{URL: "https://images.example.com/portrait.jpg", Alt: "Portrait"},
	}
}

// ChannelFixture returns a handful of channels
func ChannelFixture() []models.Channel {
	return []models.Channel{
		{Name: "#chat", Emoji: "💬", URL: "https://discord.com/channels/1/chat", Desc: "General conversation, introductions, and daily chat."},
		{Name: "#media", Emoji: "🖼️", URL: "https://discord.com/channels/1/media", Desc: "Share photos, videos, and fan edits."},
		{Name: "#jenna-ortega", Emoji: "⭐", URL: "https://discord.com/channels/1/jenna-ortega", Desc: "Dedicated space for Jenna-related news."},
		{Name: "#fun-facts", Emoji: "🧠", URL: "https://discord.com/channels/1/fun-facts", Desc: "Share interesting facts and trivia."},
		{Name: "#qotd", Emoji: "❓", URL: "https://discord.com/channels/1/qotd", Desc: "Daily questions to spark conversation."},
		{Name: "#events", Emoji: "🎉", URL: "https://discord.com/channels/1/events", Desc: "Event announcements and discussions."},
		{Name: "#contests", Emoji: "🏆", URL: "https://discord.com/channels/1/contests", Desc: "Monthly contests and giveaways."},
		{Name: "#spam", Emoji: "😂", URL: "https://discord.com/channels/1/spam", Desc: "A designated area for memes and random posts."},
		{Name: "#selfie", Emoji: "🤳", URL: "https://discord.com/channels/1/selfie", Desc: "Share selfies and profile pics."},
	}
}

func ts(y int, m time.Month, d int) models.Timestamp {
	return models.Timestamp{Time: time.Date(y, m, d, 10, 30, 0, 0, time.UTC)}
}
