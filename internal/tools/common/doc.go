// Package common holds helpers shared by the tool packages: the
// instrumentation wrapper applied to every registered handler and the
// argument extraction helpers.
package common
