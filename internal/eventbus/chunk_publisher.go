package eventbus

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxelsim/internal/logging"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world"
	"github.com/annel0/voxelsim/internal/world/block"
)

// SourceWorld имя источника событий мира
const SourceWorld = "world"

// Заголовок ChunkRebuilt: X, Z (int32), Version, Step (uint64), число блоков и видимых (uint32)
const rebuiltHeaderSize = 4 + 4 + 8 + 8 + 4 + 4

// ErrPayloadTooShort полезная нагрузка короче заголовка
var ErrPayloadTooShort = errors.New("eventbus: полезная нагрузка слишком короткая")

var (
	decoderOnce    sync.Once
	payloadDecoder *zstd.Decoder
	decoderErr     error
)

// getPayloadDecoder лениво создаёт общий zstd-декодер
func getPayloadDecoder() (*zstd.Decoder, error) {
	decoderOnce.Do(func() {
		payloadDecoder, decoderErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if decoderErr != nil {
			decoderErr = fmt.Errorf("создание zstd-декодера: %w", decoderErr)
		}
	})
	return payloadDecoder, decoderErr
}

// ChunkPublisher реализует world.RebuildSink и публикует события чанков в шину.
// Блоки сжимаются zstd; публикация не блокирует шаг при заполненном буфере.
type ChunkPublisher struct {
	bus     EventBus
	encoder *zstd.Encoder
	logger  *logging.Logger
}

var _ world.RebuildSink = (*ChunkPublisher)(nil)

// NewChunkPublisher создаёт издателя поверх шины
func NewChunkPublisher(bus EventBus) (*ChunkPublisher, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("создание zstd-кодировщика: %w", err)
	}
	return &ChunkPublisher{
		bus:     bus,
		encoder: enc,
		logger:  logging.GetEventBusLogger(),
	}, nil
}

// ChunkRebuilt публикует новое содержимое чанка
func (p *ChunkPublisher) ChunkRebuilt(ev world.RebuildEvent) {
	payload := p.encoder.EncodeAll(encodeRebuilt(ev), nil)
	env := NewEnvelope(SourceWorld, TypeChunkRebuilt, PriorityNormal, payload)
	env.Metadata = map[string]string{"chunk": fmt.Sprintf("%d,%d", ev.Coords.X, ev.Coords.Z)}
	p.publish(env)
}

// ChunkReleased публикует выгрузку чанка из активного набора
func (p *ChunkPublisher) ChunkReleased(coords vec.Vec2) {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint32(payload[0:], uint32(int32(coords.X)))
	binary.BigEndian.PutUint32(payload[4:], uint32(int32(coords.Z)))
	p.publish(NewEnvelope(SourceWorld, TypeChunkReleased, PriorityHigh, payload))
}

func (p *ChunkPublisher) publish(env *Envelope) {
	if err := p.bus.Publish(context.Background(), env); err != nil {
		p.logger.Warn("не удалось опубликовать %s: %v", env.EventType, err)
	}
}

// Close освобождает ресурсы кодировщика
func (p *ChunkPublisher) Close() error {
	return p.encoder.Close()
}

func encodeRebuilt(ev world.RebuildEvent) []byte {
	buf := make([]byte, rebuiltHeaderSize, rebuiltHeaderSize+len(ev.Blocks)+4*len(ev.Visible))
	binary.BigEndian.PutUint32(buf[0:], uint32(int32(ev.Coords.X)))
	binary.BigEndian.PutUint32(buf[4:], uint32(int32(ev.Coords.Z)))
	binary.BigEndian.PutUint64(buf[8:], ev.Version)
	binary.BigEndian.PutUint64(buf[16:], ev.Step)
	binary.BigEndian.PutUint32(buf[24:], uint32(len(ev.Blocks)))
	binary.BigEndian.PutUint32(buf[28:], uint32(len(ev.Visible)))

	for _, id := range ev.Blocks {
		buf = append(buf, byte(id))
	}
	for _, vb := range ev.Visible {
		buf = append(buf, vb.X, vb.Y, vb.Z, byte(vb.Kind))
	}
	return buf
}

// DecodeChunkRebuilt восстанавливает событие перестроения из полезной нагрузки
func DecodeChunkRebuilt(payload []byte) (world.RebuildEvent, error) {
	dec, err := getPayloadDecoder()
	if err != nil {
		return world.RebuildEvent{}, err
	}
	raw, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return world.RebuildEvent{}, fmt.Errorf("распаковка zstd: %w", err)
	}
	if len(raw) < rebuiltHeaderSize {
		return world.RebuildEvent{}, ErrPayloadTooShort
	}

	ev := world.RebuildEvent{
		Coords: vec.Vec2{
			X: int(int32(binary.BigEndian.Uint32(raw[0:]))),
			Z: int(int32(binary.BigEndian.Uint32(raw[4:]))),
		},
		Version: binary.BigEndian.Uint64(raw[8:]),
		Step:    binary.BigEndian.Uint64(raw[16:]),
	}
	nBlocks := int(binary.BigEndian.Uint32(raw[24:]))
	nVisible := int(binary.BigEndian.Uint32(raw[28:]))

	body := raw[rebuiltHeaderSize:]
	if len(body) != nBlocks+4*nVisible {
		return world.RebuildEvent{}, fmt.Errorf("ожидалось %d байт тела, получено %d", nBlocks+4*nVisible, len(body))
	}

	ev.Blocks = make([]block.BlockID, nBlocks)
	for i := range ev.Blocks {
		ev.Blocks[i] = block.BlockID(body[i])
	}
	body = body[nBlocks:]

	ev.Visible = make([]world.VisibleBlock, nVisible)
	for i := range ev.Visible {
		b := body[4*i : 4*i+4]
		ev.Visible[i] = world.VisibleBlock{X: b[0], Y: b[1], Z: b[2], Kind: block.BlockID(b[3])}
	}
	return ev, nil
}

// DecodeChunkReleased возвращает координаты выгруженного чанка
func DecodeChunkReleased(payload []byte) (vec.Vec2, error) {
	if len(payload) < 8 {
		return vec.Vec2{}, ErrPayloadTooShort
	}
	return vec.Vec2{
		X: int(int32(binary.BigEndian.Uint32(payload[0:]))),
		Z: int(int32(binary.BigEndian.Uint32(payload[4:]))),
	}, nil
}
