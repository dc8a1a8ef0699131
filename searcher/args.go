package searcher

// Hyperparameters for MCTS

const Exploration = 0.5 // Exploration constant c

const TieBreak = 1.0 / 10000 // Upper bound of the random noise added to every score

const DefaultIterations = 10000
