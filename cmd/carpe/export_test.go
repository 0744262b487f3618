package main

// NewProvider exposes newProvider for tests.
var NewProvider = newProvider
