package game

import "math"

// Smoother is a first-order low-pass filter on the player paddle.
type Smoother struct {
	Lerp   float64
	Travel float64
}

// NewSmoother builds a smoother from s.
func NewSmoother(s Settings) Smoother {
	return Smoother{Lerp: s.Lerp, Travel: s.PaddleTravel()}
}

// Advance closes Lerp of the remaining distance to targetX.
func (sm Smoother) Advance(currentX, targetX float64) float64 {
	if currentX == targetX {
		return clamp(currentX, 0, sm.Travel)
	}
	next := currentX + (targetX-currentX)*sm.Lerp
	return clamp(next, 0, sm.Travel)
}

// AIController tracks the ball at a fixed speed. It never anticipates.
type AIController struct {
	Speed       float64
	PaddleWidth float64
	Travel      float64
}

// NewAIController builds the single AI profile from s.
func NewAIController(s Settings) AIController {
	return AIController{Speed: s.AISpeed, PaddleWidth: s.PaddleWidth, Travel: s.PaddleTravel()}
}

// Advance moves the paddle centre toward ballX by at most Speed.
func (ai AIController) Advance(aiX, ballX float64) float64 {
	target := ballX - ai.PaddleWidth/2
	diff := target - aiX
	step := math.Min(ai.Speed, math.Abs(diff))
	if diff < 0 {
		step = -step
	}
	return clamp(aiX+step, 0, ai.Travel)
}
