package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

type pivotSummary struct {
	Radius   float64
	MaxAngle float64
	internal string
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	// Use the length of the first string as a weak verification of checking that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	// Log level.
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	// Logger name.
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	// Filename:line_number.
	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	// Log message.
	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])

	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	if len(actualParts) == 5 {
		return
	}

	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[5]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[5]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"fold", NewAtomicLevelAt(DEBUG), true, []Appender{NewWriterAppender(notStdout)}}

	logger.Info("impl Info log")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tINFO\tfold\tlogging/impl_test.go:67\timpl Info log")

	logger.Debugw("pivot geometry", "radius", 1.0)
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tDEBUG\tfold\tlogging/impl_test.go:75\tpivot geometry\t{\"radius\":1}")

	// Only exported fields of structs are serialized.
	logger.Warnw("summary", "pivot", pivotSummary{Radius: 0.5, MaxAngle: 3, internal: "hidden"})
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tWARN\tfold\tlogging/impl_test.go:80\tsummary\t{\"pivot\":{\"Radius\":0.5,\"MaxAngle\":3}}")

	// An unpaired key is reported rather than dropped.
	logger.Errorw("unpaired", "lonely")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tERROR\tfold\tlogging/impl_test.go:85\tunpaired\t{\"lonely\":\"unpaired log key\"}")
}

func TestLevels(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"fold", NewAtomicLevelAt(INFO), true, []Appender{NewWriterAppender(notStdout)}}

	logger.Debug("dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debug("kept")
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "kept")

	sub := logger.Sublogger("arc")
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	notStdout.Reset()
	sub.Warn("dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
	sub.Error("kept")
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "fold.arc")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.want)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	out, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"error"`)
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("planned", "duration_s", 12.4)
	logger.Debug("detail")

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entries := logs.FilterMessage("planned").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["duration_s"], test.ShouldEqual, 12.4)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestConstructors(t *testing.T) {
	test.That(t, NewLogger("fold").GetLevel(), test.ShouldEqual, INFO)
	test.That(t, NewDebugLogger("fold").GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, NewBlankLogger("fold").GetLevel(), test.ShouldEqual, DEBUG)

	logger := NewTestLogger(t)
	logger.Infow("test logger", "ok", true)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}
