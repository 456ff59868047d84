package tui

import (
	"fmt"
	"strings"

	"itinctl/pkg/config"
	"itinctl/pkg/itinerary"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Backend URL", "backend"),
						huh.NewOption("Set Default Travel Mode", "mode"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "backend":
			err = runSetBackendTUI(cfg)
		case "mode":
			err = runSetModeTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.itinctl.json) ---"))
			fmt.Print(DescribeConfig(cfg))
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

// DescribeConfig renders the settings as aligned lines
func DescribeConfig(cfg *config.AppConfig) string {
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "(default)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Backend URL:      %s\n", cfg.BackendURL)
	fmt.Fprintf(&b, "Default Mode:     %s\n", cfg.DefaultMode)
	fmt.Fprintf(&b, "Accent Color:     %s\n", cfg.AccentColor)
	fmt.Fprintf(&b, "Log Level:        %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "Log File:         %s\n", logFile)
	fmt.Fprintf(&b, "Request Timeout:  %s\n", cfg.RequestTimeout)
	fmt.Fprintf(&b, "Health Interval:  %s\n", cfg.HealthInterval)
	fmt.Fprintf(&b, "Error Hide Delay: %s\n", cfg.ErrorHideDelay)
	return b.String()
}

func runSetBackendTUI(cfg *config.AppConfig) error {
	input := cfg.BackendURL

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Root of the itinerary API, e.g. http://localhost:5001").
				Value(&input).
				Validate(config.ValidateBackendURL),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.BackendURL = strings.TrimRight(input, "/")
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Backend set to: %s\n", cfg.BackendURL)))
	return nil
}

func runSetModeTUI(cfg *config.AppConfig) error {
	selected := itinerary.Mode(cfg.DefaultMode)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[itinerary.Mode]().
				Title("Select your default travel mode").
				Options(modeOptions...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultMode = string(selected)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default travel mode changed to: %s\n", selected)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for itinctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Route Blue", colorBlock("33")), "33"),
					huh.NewOption(fmt.Sprintf("%s Garonne Teal", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Bordeaux Red", colorBlock("124")), "124"),
					huh.NewOption(fmt.Sprintf("%s Tram Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #2563EB").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return config.ValidateAccentColor(str)
					}),
			),
		).WithTheme(GetCustomTheme(cfg.AccentColor))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
