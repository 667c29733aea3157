package ui

// bannerLines is the startup logo, suppressed with --no-logo.
var bannerLines = []string{
	"╺┳╸┌┬┐┬ ┬─┐ ┬  ╺┳╸┬─┐┌─┐┌─┐",
	" ┃ │││││ │┌┴┬┘   ┃ ├┬┘├┤ ├┤ ",
	" ╹ ┴ ┴└─┘┴ └─   ╹ ┴└─└─┘└─┘",
}
