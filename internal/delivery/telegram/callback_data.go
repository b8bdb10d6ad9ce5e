package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback data layout: "quiz:len:<n>" picks the quiz length,
// "quiz:again" restarts with the default length.
const (
	callbackQuizLenPrefix = "quiz:len:"
	callbackQuizAgain     = "quiz:again"
)

func buildQuizLengthCallback(n int) string {
	return fmt.Sprintf("%s%d", callbackQuizLenPrefix, n)
}

func parseQuizLengthCallback(data string) (int, bool) {
	raw, found := strings.CutPrefix(data, callbackQuizLenPrefix)
	if !found {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
