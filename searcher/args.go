package searcher

// Defaults for Monte Carlo evaluation

const DefaultPlayouts = 100 // Simulations per empty cell

const DefaultGoroutines = 1
