package wait

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"
)

func TestParseUint(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name  string
		in    string
		inDef uint64
		want  uint64
	}{
		{"positive", "32", 0, 32},
		{"zero", "0", 7, 0},
		{"max uint64", "18446744073709551615", 0, 18446744073709551615},
		{"negative", "-32", 10, 10},
		{"negative zero", "-0", 10, 10},
		{"invalid", "hello", 0, 0},
		{"trailing garbage", "10o", 4, 4},
		{"empty", "", 11, 11},
		{"whitespace", " 5", 11, 11},
		{"overflow", "18446744073709551616", 3, 3},
		{"decimal", "1.5", 2, 2},
	}

	for i, test := range tests {
		i := i
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := ParseUint(test.in, test.inDef)
			if got != test.want {
				t.Errorf("test[%d] %q failed - want: %d, got: %d", i, test.name, test.want, got)
			}
		})
	}
}

func TestParseUintRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []uint64{0, 1, 9, 10, 30, 65535, 1 << 40} {
		if got := ParseUint(strconv.FormatUint(n, 10), n+1); got != n {
			t.Errorf("test %d failed - want: %d, got: %d", n, n, got)
		}
		if n == 0 {
			continue
		}
		if got := ParseUint("-"+strconv.FormatUint(n, 10), 42); got != 42 {
			t.Errorf("test -%d failed - want: %d, got: %d", n, 42, got)
		}
	}
}

func TestHostList(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
		{"single", "localhost:1234", []string{"localhost:1234"}},
		{"trimmed", " db:5432 , cache:6379 ", []string{"db:5432", "cache:6379"}},
		{"empty entry kept", "a:1,,b:2", []string{"a:1", "", "b:2"}},
		{"order preserved", "c:3,a:1,b:2", []string{"c:3", "a:1", "b:2"}},
	}

	for i, test := range tests {
		i := i
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := Config{Hosts: test.in}.HostList()
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("test[%d] %q failed - want: %q, got: %q", i, test.name, test.want, got)
			}
		})
	}
}

// setEnv sets all the WAIT_* variables for the duration of the test.
func setEnv(t *testing.T, hosts, timeout, before, after string) {
	t.Helper()
	t.Setenv(EnvWaitBefore, before)
	t.Setenv(EnvWaitAfter, after)
	t.Setenv(EnvTimeout, timeout)
	t.Setenv(EnvHosts, hosts)
}

func TestConfigFromEnv(t *testing.T) {
	setEnv(t, "localhost:1234", "", "2", "3")

	want := Config{Hosts: "localhost:1234", Timeout: 30, WaitBefore: 2, WaitAfter: 3}
	if got := ConfigFromEnv(); got != want {
		t.Errorf("test failed - want: %+v, got: %+v", want, got)
	}
}

func TestConfigFromEnvInvalid(t *testing.T) {
	setEnv(t, "", "-5", "10o", "10")

	want := Config{Hosts: "", Timeout: 30, WaitBefore: 0, WaitAfter: 10}
	if got := ConfigFromEnv(); got != want {
		t.Errorf("test failed - want: %+v, got: %+v", want, got)
	}
}

func TestConfigFromEnvWith(t *testing.T) {
	setEnv(t, "", "abc", "", "4")

	base := Config{Hosts: "db:5432", Timeout: 12, WaitBefore: 1, WaitAfter: 9}
	// WAIT_HOSTS is set to an empty string, which overrides the base hosts.
	want := Config{Hosts: "", Timeout: 12, WaitBefore: 1, WaitAfter: 4}
	if got := ConfigFromEnvWith(base); got != want {
		t.Errorf("test failed - want: %+v, got: %+v", want, got)
	}
}

func TestEnvVar(t *testing.T) {
	t.Setenv("WAIT_TEST_SET", "value")
	t.Setenv("WAIT_TEST_EMPTY", "")

	var tests = []struct {
		name string
		in   string
		want string
	}{
		{"set", "WAIT_TEST_SET", "value"},
		{"empty", "WAIT_TEST_EMPTY", ""},
		{"unset", "WAIT_TEST_UNSET_VARIABLE", "default"},
	}

	for i, test := range tests {
		if got := EnvVar(test.in, "default"); got != test.want {
			t.Errorf("test[%d] %q failed - want: %q, got: %q", i, test.name, test.want, got)
		}
	}
}

func ExampleParseUint() {
	fmt.Println(ParseUint("45", 30))
	fmt.Println(ParseUint("-45", 30))
	fmt.Println(ParseUint("", 30))
	// Output:
	// 45
	// 30
	// 30
}

func ExampleConfig_HostList() {
	cfg := Config{Hosts: " db:5432, https://example.com "}
	for _, host := range cfg.HostList() {
		fmt.Println(host)
	}
	// Output:
	// db:5432
	// https://example.com
}
