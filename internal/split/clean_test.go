package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_RemovesTOCBlock(t *testing.T) {
	text := strings.Join([]string{
		"目录",
		"1.1 概述 ........ 3",
		"1.2 安全须知 ........ 5",
		"第一章 概述",
		"呼吸机用于患者通气。",
	}, "\n")

	cleaned := CleanText(text)

	assert.NotContains(t, cleaned, "目录")
	assert.NotContains(t, cleaned, "安全须知")
	assert.Contains(t, cleaned, "呼吸机用于患者通气。")
}

func TestCleanText_RemovesEnglishTOC(t *testing.T) {
	text := strings.Join([]string{
		"Table of Contents",
		"Overview ........ 3",
		"Safety notices ........ 5",
		"Chapter 1 Overview",
		"The ventilator delivers tidal volume to the patient.",
	}, "\n")

	cleaned := CleanText(text)

	assert.NotContains(t, cleaned, "Table of Contents")
	assert.NotContains(t, cleaned, "Safety notices")
	assert.Contains(t, cleaned, "tidal volume")
}

func TestCleanText_RemovesTOCShapedLines(t *testing.T) {
	text := strings.Join([]string{
		"1. Introduction",
		"2.3 Alarm settings",
		"42",
		"The FiO2 sensor measures oxygen concentration.",
	}, "\n")

	cleaned := CleanText(text)

	assert.NotContains(t, cleaned, "Introduction")
	assert.NotContains(t, cleaned, "Alarm settings")
	assert.NotContains(t, cleaned, "42")
	assert.Contains(t, cleaned, "FiO2 sensor")
}

func TestCleanText_DotLeaders(t *testing.T) {
	cleaned := CleanText("Oxygen inlet .......... 12-3")

	assert.Equal(t, "Oxygen inlet 12-3", cleaned)
}

func TestCleanText_KeepsSentencePeriods(t *testing.T) {
	cleaned := CleanText("The patient was ventilated. Tidal volume was set to 500 mL.")

	assert.Contains(t, cleaned, "ventilated.")
	assert.Contains(t, cleaned, "500 mL.")
}

func TestCleanText_CollapsesBlankRuns(t *testing.T) {
	cleaned := CleanText("first line\n\n\n\nsecond line")

	assert.NotContains(t, cleaned, "\n\n\n")
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n  \n"))
}
