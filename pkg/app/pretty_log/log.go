package pretty_log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mut   sync.Mutex
	tasks = make(map[string]string)
	out   io.Writer = os.Stdout
)

const (
	bold       = "\033[1m"
	brightBlue = "\033[94m"
	orange     = "\033[38;5;208m"
	grey       = "\033[90m"
	green      = "\033[32m"
	red        = "\033[31m"
	cyan       = "\033[36m"
	reset      = "\033[0m"
)

// SetOutput redirects all log output, e.g. to io.Discard in tests
func SetOutput(w io.Writer) {
	mut.Lock()
	defer mut.Unlock()
	out = w
}

func now() string {
	return time.Now().Format("2006/01/02 15:04:05")
}

func printf(format string, a ...interface{}) {
	mut.Lock()
	defer mut.Unlock()
	fmt.Fprintf(out, format, a...)
}

// TaskGroup prints the title of a group of tasks in bright blue color.
func TaskGroup(format string, a ...interface{}) {
	title := fmt.Sprintf(format, a...)
	printf("[%s] %s%s%s%s\n", now(), brightBlue, bold, title, reset)
}

// BeginTask prints the beginning of a task with its name in orange and returns an id used to complete it.
func BeginTask(format string, a ...interface{}) string {
	taskName := fmt.Sprintf(format, a...)

	mut.Lock()
	id := uuid.NewString()
	tasks[id] = taskName
	mut.Unlock()

	printf("[%s] %s%s%s %s...%s\n", now(), orange, taskName, reset, grey, reset)

	return id
}

// CompleteTask prints the task name in green.
func CompleteTask(id string) {
	printf("[%s] %s%s%s\n", now(), green, popTask(id), reset)
}

// FailTask prints the task name in red.
func FailTask(id string) {
	printf("[%s] %s%s%s\n", now(), red, popTask(id), reset)
}

func popTask(id string) string {
	mut.Lock()
	defer mut.Unlock()

	name := tasks[id]
	delete(tasks, id)
	return name
}

// TaskResult prints the result of a task in cyan color.
func TaskResult(format string, a ...interface{}) {
	// Remove newline from the end of the format string
	format = strings.TrimSuffix(format, "\n")
	printf("[%s] %s%s%s\n", now(), cyan, fmt.Sprintf(format, a...), reset)
}

// TaskResultBad prints the result of a task in red color.
func TaskResultBad(format string, a ...interface{}) {
	format = strings.TrimSuffix(format, "\n")
	printf("[%s] %s%s%s\n", now(), red, fmt.Sprintf(format, a...), reset)
}

// TaskResultList prints the result that is a string list
func TaskResultList(list []string) {
	ts := now()
	for _, item := range list {
		if item == "" {
			continue
		}

		item = strings.TrimSuffix(item, "\n")
		printf("[%s] %s - %s%s\n", ts, cyan, item, reset)
	}
}
