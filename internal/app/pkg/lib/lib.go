// Package lib contains app specific libraries
package lib

import (
	"fmt"
)

// L is used to get the key of the last location of a driver from redis
func L(driver any) string {
	_, ok := driver.(int)
	if ok {
		return fmt.Sprintf("l%d", driver)
	}
	return fmt.Sprintf("l%s", driver)
}
