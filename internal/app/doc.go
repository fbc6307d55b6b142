// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle (load a network
// description, elaborate it, render the composed fragment), decoupled from
// any specific entrypoint like a CLI.
package app
