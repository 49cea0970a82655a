package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/payethio/payethio-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     ____              _____ _   _     _
    |  _ \ __ _ _   _| ____| |_| |__ (_) ___
    | |_) / _' | | | |  _| | __| '_ \| |/ _ \
    |  __/ (_| | |_| | |___| |_| | | | | (_) |
    |_|   \__,_|\__, |_____|\__|_| |_|_|\___/
                |___/
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	formattedVersion := version.FormatVersion()
	if versionStr != "" && versionStr != version.Version {
		formattedVersion = versionStr
	}
	fmt.Println(yellow(fmt.Sprintf("PayEthio Dashboard (v%s)", formattedVersion)))
}
