package meta

// GO_ROUTINES defines the number of goroutines evaluating cells in parallel.
const GO_ROUTINES = 8

// PLAYOUTS defines the number of simulations per empty cell.
const PLAYOUTS = 100

// MAX_PLAYOUTS caps the playouts a single server request may ask for.
const MAX_PLAYOUTS = 1_000

// MAX_SIMULATIONS caps empty cells times playouts for a single server request.
const MAX_SIMULATIONS = 100_000

// BOARD_SIZE defines the default board width and height.
const BOARD_SIZE = 11

// ADDR defines the default server listen address.
const ADDR = ":8080"

// NUM_GAMES defines the number of games per experiment match up.
const NUM_GAMES = 30

// OUTPUT_DIR defines where experiment results are written.
const OUTPUT_DIR = "results"

const LOG_LEVEL = "info"
