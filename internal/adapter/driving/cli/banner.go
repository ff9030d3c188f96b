package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/op-bridge-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ___  ____    ____       _     _            
  / _ \|  _ \  | __ ) _ __(_) __| | __ _  ___ 
 | | | | |_) | |  _ \| '__| |/ _' |/ _' |/ _ \
 | |_| |  __/  | |_) | |  | | (_| | (_| |  __/
  \___/|_|     |____/|_|  |_|\__,_|\__, |\___|
                                   |___/      
`
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))
	fmt.Println(blue(fmt.Sprintf("Operating Profit Bridge CLI (v%s)", version.FormatVersion())))
}
