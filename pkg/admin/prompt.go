package admin

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// ErrNothingPending is returned when a selection is asked for an empty queue
var ErrNothingPending = errors.New("no pending uploads")

// SelectUpload lets the moderator pick one upload from the queue
func SelectUpload(label string, uploads []models.PendingUpload) (models.PendingUpload, error) {
	if len(uploads) == 0 {
		return models.PendingUpload{}, ErrNothingPending
	}

	prompt := promptui.Select{
		Label: label,
		Items: UploadLabels(uploads),
		Size:  10,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return models.PendingUpload{}, fmt.Errorf("upload selection: %w", err)
	}
	return uploads[idx], nil
}

// SelectAsset asks which site asset an approved file should become
func SelectAsset() (string, error) {
	prompt := promptui.Select{
		Label: "Set as",
		Items: []string{AssetBanner, AssetPFP},
	}
	_, choice, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("asset selection: %w", err)
	}
	return choice, nil
}

// UploadLabels formats uploads for a selection list
func UploadLabels(uploads []models.PendingUpload) []string {
	labels := make([]string, len(uploads))
	for i, u := range uploads {
		label := u.Filename + " by " + u.Uploader
		if u.UploadedAt != "" {
			label += " (" + u.UploadedAt + ")"
		}
		labels[i] = label
	}
	return labels
}
