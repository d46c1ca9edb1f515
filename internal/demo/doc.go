// Package demo rebuilds the sample Model / ViewModel / View trio as
// bindable objects. It exists for the bindctl command and end-to-end tests.
package demo
