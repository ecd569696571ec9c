// Package config loads typed configuration structs from the environment.
//
// Load parses env-tagged struct fields via caarlos0/env, after loading a
// .env file once per process when one exists (godotenv). Each struct type
// is parsed a single time and cached, so every component can call Load
// for its own config without coordination.
package config
