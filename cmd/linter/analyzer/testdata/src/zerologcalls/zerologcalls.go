package zerologcalls

import "github.com/rs/zerolog/log"

func Shorten() {
	log.Info().Msg("allowed")
	log.Fatal().Msg("stop") // want "log.Fatal is forbidden outside main function"
	log.Panic().Msg("stop") // want "log.Panic is forbidden outside main function"
}

func main() {
	log.Fatal().Msg("allowed in main")
}
