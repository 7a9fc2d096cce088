// Package domain contains the value types shared by the guard, the
// interception layer and the HTTP API. They carry no infrastructure concerns.
package domain
