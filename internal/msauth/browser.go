package msauth

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/mbeutel/teamscribe/internal/logging"
)

// openBrowser launches the platform's default browser at the given URL.
// Launch failures are not errors: the URL is printed for manual use so the
// flow can always proceed.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		slog.Warn("failed to launch browser, open the URL manually",
			logging.Operation("auth.browser"), logging.Err(err))
		fmt.Fprintf(os.Stderr, "Open this URL in your browser to sign in:\n\n  %s\n\n", url)
		return
	}

	fmt.Fprintf(os.Stderr, "Opening your browser to sign in. If nothing happens, open:\n\n  %s\n\n", url)
}
