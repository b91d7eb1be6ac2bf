// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache.
//
// The cache evicts the least recently used entry once it holds more than its
// capacity. GetOrCompute fills missing entries from a function and does not
// cache errors, which suits memoizing expensive pure computations such as
// compiling regular expressions.
//
// # Usage
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](256)
//	re, err := patterns.GetOrCompute(expr, func() (*regexp.Regexp, error) {
//		return regexp.Compile(expr)
//	})
package cache
