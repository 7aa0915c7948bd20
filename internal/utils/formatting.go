package utils

import (
	"fmt"
	"strconv"
	"strings"

	"rhystmorgan/btcterm/internal/amount"
)

// FormatAddress truncates an address for display purposes
func FormatAddress(address string, prefixLen, suffixLen int) string {
	if len(address) <= prefixLen+suffixLen+3 {
		return address
	}

	return address[:prefixLen] + "..." + address[len(address)-suffixLen:]
}

// FormatAddressWithName formats an address with an optional name
func FormatAddressWithName(address, name string) string {
	if name != "" {
		return fmt.Sprintf("%s (%s)", name, FormatAddress(address, 6, 4))
	}
	return FormatAddress(address, 10, 8)
}

// FormatAmountWithUnit renders minor units in unit followed by its label
func FormatAmountWithUnit(minorUnits int64, unit amount.Unit) string {
	return fmt.Sprintf("%s %s", unit.ToDisplayText(minorUnits), unit.Label())
}

// TruncateString truncates a string to a maximum number of runes with ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}

// FormatStepIndicator creates a step indicator string
func FormatStepIndicator(currentStep, totalSteps int, stepNames []string) string {
	var result strings.Builder

	for i := 0; i < totalSteps; i++ {
		if i > 0 {
			result.WriteString(" → ")
		}

		stepName := strconv.Itoa(i + 1)
		if i < len(stepNames) {
			stepName = stepNames[i]
		}

		if i == currentStep {
			result.WriteString("[" + stepName + "]")
		} else if i < currentStep {
			result.WriteString("✓")
		} else {
			result.WriteString(stepName)
		}
	}

	return result.String()
}
