package prompts

// GhostPrompt asks the image model to restyle an avatar as a ghost.
const GhostPrompt = "Convert avatar into friendly ghost character"

// GhostImageSize is the square output size requested from the image model.
const GhostImageSize = 1024
