// Package guard forces test mode for packages that import it, keeping main()
// based smoke tests from starting real servers or workers.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("RIOHOST_TEST_MODE") == "" {
			_ = os.Setenv("RIOHOST_TEST_MODE", "1")
		}
	})
}
