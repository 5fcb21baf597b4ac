package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// SelectFileWithFzf launches fzf over image files found under startDir and
// returns the selected path. A chafa preview is attempted and silently
// dropped if chafa isn't installed; batch/CI environments without fzf
// itself fall straight through to the caller's typed-prompt fallback.
func SelectFileWithFzf(startDir string) (string, error) {
	quotedDir := strconv.Quote(startDir)
	const previewCmd = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.webp' \\) | fzf --height 100%% --border --prompt='Page> ' --ansi --preview=%q --preview-window='right:60%%'",
		quotedDir,
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}
