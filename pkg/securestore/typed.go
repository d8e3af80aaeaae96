package securestore

func (s *Store) SetInt(key string, value int32) error {
	return Set(s, IntCodec, key, value)
}

func (s *Store) GetInt(key string, def int32) int32 {
	return Get(s, IntCodec, key, def)
}

func (s *Store) SetUInt(key string, value uint32) error {
	return Set(s, UIntCodec, key, value)
}

func (s *Store) GetUInt(key string, def uint32) uint32 {
	return Get(s, UIntCodec, key, def)
}

func (s *Store) SetLong(key string, value int64) error {
	return Set(s, LongCodec, key, value)
}

func (s *Store) GetLong(key string, def int64) int64 {
	return Get(s, LongCodec, key, def)
}

func (s *Store) SetFloat(key string, value float32) error {
	return Set(s, FloatCodec, key, value)
}

func (s *Store) GetFloat(key string, def float32) float32 {
	return Get(s, FloatCodec, key, def)
}

func (s *Store) SetDouble(key string, value float64) error {
	return Set(s, DoubleCodec, key, value)
}

func (s *Store) GetDouble(key string, def float64) float64 {
	return Get(s, DoubleCodec, key, def)
}

func (s *Store) SetBool(key string, value bool) error {
	return Set(s, BoolCodec, key, value)
}

func (s *Store) GetBool(key string, def bool) bool {
	return Get(s, BoolCodec, key, def)
}

func (s *Store) SetString(key string, value string) error {
	return Set(s, StringCodec, key, value)
}

func (s *Store) GetString(key string, def string) string {
	return Get(s, StringCodec, key, def)
}

func (s *Store) SetByteArray(key string, value []byte) error {
	return Set(s, ByteArrayCodec, key, value)
}

func (s *Store) GetByteArray(key string, def []byte) []byte {
	return Get(s, ByteArrayCodec, key, def)
}

func (s *Store) SetVector2(key string, value Vector2Value) error {
	return Set(s, Vector2Codec, key, value)
}

func (s *Store) GetVector2(key string, def Vector2Value) Vector2Value {
	return Get(s, Vector2Codec, key, def)
}

func (s *Store) SetVector3(key string, value Vector3Value) error {
	return Set(s, Vector3Codec, key, value)
}

func (s *Store) GetVector3(key string, def Vector3Value) Vector3Value {
	return Get(s, Vector3Codec, key, def)
}

func (s *Store) SetQuaternion(key string, value QuaternionValue) error {
	return Set(s, QuaternionCodec, key, value)
}

func (s *Store) GetQuaternion(key string, def QuaternionValue) QuaternionValue {
	return Get(s, QuaternionCodec, key, def)
}

func (s *Store) SetColor(key string, value ColorValue) error {
	return Set(s, ColorCodec, key, value)
}

func (s *Store) GetColor(key string, def ColorValue) ColorValue {
	return Get(s, ColorCodec, key, def)
}

func (s *Store) SetRect(key string, value RectValue) error {
	return Set(s, RectCodec, key, value)
}

func (s *Store) GetRect(key string, def RectValue) RectValue {
	return Get(s, RectCodec, key, def)
}
