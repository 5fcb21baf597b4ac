package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/deepteams/webp"
)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads a full line from stdin and treats a single-line "/"
// as a request to invoke fzf for file selection. Behavior:
//   - Print the prompt.
//   - Read a full line (including spaces).
//   - If the trimmed line equals "/", launch fzf via SelectFileWithFzf(".").
//   - If fzf returns a non-empty selection, return it.
//   - If fzf is unavailable or selection is cancelled, fall back to a typed prompt
//     (re-using PromptLine to read a full line).
//   - Otherwise return the trimmed line as the input value.
func PromptLineOrFzf(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	input := strings.TrimSpace(line)

	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Printf(" [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(prompt)
	}

	return input, nil
}

// PromptLineWithFzf kept for backward compatibility; it delegates to
// PromptLineOrFzf (which reads the whole line and treats "/" as fzf trigger).
func PromptLineWithFzf(prompt string) (string, error) {
	return PromptLineOrFzf(prompt)
}

// LoadImage decodes a page image from disk. PNG, JPEG, GIF, and WebP (via
// the blank-imported deepteams/webp codec, which self-registers with
// image.RegisterFormat) are supported through the standard image.Decode
// dispatch.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// SaveImage saves an image.Image to disk using format inferred from the
// filename extension: .jpg/.jpeg is written as JPEG, and every other
// extension (including .gif) is written as PNG.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	default:
		return png.Encode(f, img)
	}
}

// GetImageInfoImage returns a short info string for an image.Image.
func GetImageInfoImage(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	return fmt.Sprintf("Width: %d, Height: %d", b.Dx(), b.Dy()), nil
}
