package main

// @title Toilet Finder API
// @version 1.0
// @description Drive a toilet-finder map session: log facilities on the map, search for places and report facility details.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /
// @schemes http
